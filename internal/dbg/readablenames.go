package dbg

import (
	"fmt"
	"reflect"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Readable names for pointers in debug logs. "0xc000012345" and "0xc000012354"
// are hard to tell apart in a sweep trace; "BraveOtter" and "CalmHeron" are
// not. Names are handed out lazily and never freed, which only matters when
// debug logging is on.

var (
	memoLock sync.Mutex
	memo     = make(map[interface{}]string)
	used     = make(map[string]bool)
	title    = cases.Title(language.English)
)

func init() {
	// Names come out in order of demand, so they won't match between runs.
	// Make that obvious.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if value := reflect.ValueOf(obj); value.Kind() == reflect.Ptr && value.IsNil() {
		return "Ø"
	}

	memoLock.Lock()
	defer memoLock.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", title.String(petname.Adjective()), title.String(petname.Name()))
	if used[r] {
		// Pet names have no digits, so the count keeps this one unique
		r = fmt.Sprintf("%s%d", r, len(memo))
	}
	memo[obj] = r
	used[r] = true
	return r
}
