package main

import "hirelink_backend/internal/app"

func main() {
	app.Run()
}
