package main

// General API documentation for swaggo. Regenerate with:
//
//	swag init -g cmd/asrd/docs.go -o docs
//
// @title           asrd API
// @version         1.0
// @description     HTTP API for multi-instance speech recognition with silence-based segmentation.
//
// @contact.name   asrd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
