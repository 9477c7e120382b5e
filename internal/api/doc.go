// Package api handles incoming HTTP requests for the user resource. Each
// handler reads the request, runs the payload through the validation
// package, calls the store and translates the outcome into a JSON response.
package api
