// Package services holds the operations behind each HTTP route. Services
// validate input, stamp server-side fields and call the repositories; they
// return sentinel errors from internal/common and never pick status codes.
package services

import "time"

// now is a seam for tests.
var now = time.Now
