package common

import (
	"flag"
	"time"

	"github.com/google/uuid"
)

var Version = "v0.1.0"
var StartTime = time.Now().Unix()

var (
	Port          = flag.Int("port", 3000, "the listening port")
	PrintVersion  = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag = flag.Bool("help", false, "print help and exit")
	EnableGzip    = flag.Bool("gzip", true, "enable gzip compression for responses")
)

// SessionSecret signs the session cookie. Regenerated on every start unless
// pinned via config file or SESSION_SECRET.
var SessionSecret = uuid.New().String()

var (
	SQLitePath       = "data/rigforge.db"
	JWTSecret        = ""
	JWTRefreshSecret = ""
)

var ItemsPerPage = 10

// Role constants
const (
	RoleGuestUser  = 0
	RoleCommonUser = 1
	RoleAdminUser  = 10
	RoleRootUser   = 100
)

// User status constants
const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 2
)

// SubmissionBlobKey is the fixed persistence key for a session's submitted
// configuration. Saving again overwrites the previous blob under the same key.
func SubmissionBlobKey(sessionID string) string {
	return "rigforge:submission:" + sessionID
}

func PrintHelp() {
	println("RigForge " + Version)
	println("Usage: rigforge [--port <port>] [--version] [--help] [--gzip]")
}
