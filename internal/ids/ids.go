// Package ids generates the human-facing identifiers used for freelancers,
// clients and jobs: a two-letter prefix followed by six digits (the last four
// digits of the current unix millisecond clock and two random digits).
//
// These ids are not guaranteed unique; the repositories reject collisions.
package ids

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	Freelancer Kind = "freelancer"
	Client     Kind = "client"
	Job        Kind = "job"
)

var prefixes = map[Kind]string{
	Freelancer: "FL",
	Client:     "CL",
	Job:        "JB",
}

var patterns = map[Kind]*regexp.Regexp{
	Freelancer: regexp.MustCompile(`^FL\d{6}$`),
	Client:     regexp.MustCompile(`^CL\d{6}$`),
	Job:        regexp.MustCompile(`^JB\d{6}$`),
}

// seams for tests
var (
	now      = time.Now
	randIntN = rand.Intn
	newUUID  = uuid.NewString
)

// New returns a fresh id of the given kind.
func New(kind Kind) (string, error) {
	prefix, ok := prefixes[kind]
	if !ok {
		return "", fmt.Errorf("unknown id kind %q", kind)
	}
	ms := now().UnixMilli() % 10000
	return fmt.Sprintf("%s%04d%02d", prefix, ms, randIntN(100)), nil
}

// Validate reports whether id has the shape New produces for kind.
func Validate(id string, kind Kind) bool {
	re, ok := patterns[kind]
	return ok && re.MatchString(id)
}

// FallbackJobID is used when a job is posted without an id:
// job_<unixMillis>_<9 random alphanumerics>.
func FallbackJobID() string {
	suffix := strings.ReplaceAll(newUUID(), "-", "")[:9]
	return fmt.Sprintf("job_%d_%s", now().UnixMilli(), suffix)
}
