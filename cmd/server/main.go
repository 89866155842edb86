package main

import (
	"os"

	"cqrs-todo/internal/app"
)

// @title           CQRS Todo API
// @version         1.0
// @description     Todo endpoints built on a Result/Error outcome model.
// @BasePath        /api/v1
func main() {
	os.Exit(app.Run())
}
