// @title           webresume API
// @version         1.0
// @description     API персонального сайта-резюме (документация Swagger).
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"webresume_backend/internal/app"

	_ "webresume_backend/docs"
)

func main() {
	app.Run()
}
