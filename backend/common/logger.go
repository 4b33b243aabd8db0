package common

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

func SetupGinLog() {
	gin.DefaultWriter = os.Stdout
	gin.DefaultErrorWriter = os.Stderr
	log.SetOutput(os.Stdout)
}

func SysLog(s string) {
	log.Printf("[SYS] %s\n", s)
}

func SysError(s string) {
	log.Printf("[ERR] %s\n", s)
}

func FatalLog(v ...any) {
	log.Fatalf("[FATAL] %v\n", fmt.Sprint(v...))
}
