//go:build tools

package main

// Pins the swag CLI used to regenerate the API docs.
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
