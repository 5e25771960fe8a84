// Package main is the entry point for the wi-api backend service.
package main

func main() {
	Execute()
}
