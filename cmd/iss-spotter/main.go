// @title        ISS Spotter API
// @version      1.0
// @description  Upcoming International Space Station passes for an IP address or a point on Earth.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import "github.com/iss-spotter/iss-spotter/internal/cli"

func main() {
	cli.Execute()
}
