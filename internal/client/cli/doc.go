// Package cli provides the azyrnyx command-line client.
//
// Commands talk to the HTTP API. signup and login store the returned session
// token in a session file so later commands (balance, redeem, claim) run as
// that account until logout. Secrets are read from the terminal without echo.
//
//	azyrnyx signup alice
//	azyrnyx redeem zenyxontop
//	azyrnyx claim daily --reward 25
//	azyrnyx admin add-code spring --amount 50 --mode global_once
package cli
