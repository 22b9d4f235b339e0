// Package cli implements the pagescout command-line client.
//
// Each invocation runs one command against the HTTP API:
//
//	signup [username]       create an account
//	login [username]        log in and store the session token
//	logout                  forget the stored token
//	analyze <url>           extract name, price and description from a page
//	agents                  list agents
//	add-agent               create an agent (prompts for the fields)
//	upload-image <file>     upload an agent image, prints the object key
//	products                list products
//	add-product             create a product (prompts for the fields)
//
// Passwords are read without echo. The token is kept in the token file and
// sent as the raw Authorization header.
package cli
