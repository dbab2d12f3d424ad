package policy

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// ErrorLog appends raw model failure details to a local file for later
// inspection. The file is append-only; entries are never rewritten.
type ErrorLog struct {
	path string
	mu   sync.Mutex
}

// NewErrorLog creates an error log writing to path.
func NewErrorLog(path string) *ErrorLog {
	return &ErrorLog{path: path}
}

// Append writes one failure detail. Logging failures are themselves only
// logged; they must never affect the decision path.
func (l *ErrorLog) Append(detail string) {
	if l == nil || l.path == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("[POLICY] error log open failed: %v", err)
		return
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s %s\n", time.Now().UTC().Format(time.RFC3339), detail); err != nil {
		log.Printf("[POLICY] error log write failed: %v", err)
	}
}
