// @title        taskhub API
// @version      1.0
// @description  Multi-tenant task tracking with role-based access control.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import _ "github.com/99minutos/taskhub/docs"

func main() {
	Execute()
}
