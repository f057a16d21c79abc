package main

import "churchconnect/internal/app"

// @title        ChurchConnect API
// @version      1.0
// @description  Community platform for parishes: accounts, bookings, feed.

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

func main() {
	app.Run()
}
