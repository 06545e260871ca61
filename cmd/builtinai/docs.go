package main

// General API documentation for swaggo. Run `swag init -g cmd/builtinai/docs.go` to generate docs.
//
// @title           builtinai API
// @version         1.0
// @description     Built-in summary model catalog, prompt templates and generation planning.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
