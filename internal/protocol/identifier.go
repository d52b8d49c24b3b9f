package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

// ErrInvalidNamespaceCharacter is wrapped when an Identifier namespace
// contains a character outside [a-z0-9_.-].
var ErrInvalidNamespaceCharacter = errors.New("invalid namespace character")

// ErrInvalidPathCharacter is wrapped when an Identifier path contains a
// character outside [a-z0-9_.-/].
var ErrInvalidPathCharacter = errors.New("invalid path character")

// defaultNamespace is substituted for an empty namespace.
const defaultNamespace = "minecraft"

// Identifier is a namespace:path pair, the protocol's naming scheme for
// registry entries (blocks, items, dimensions, and so on).
type Identifier struct {
	Namespace string
	Path      string
}

// ParseIdentifier parses s as namespace:path. A string with no colon is
// treated as an empty namespace plus the whole string as path. An empty
// namespace normalizes to "minecraft".
func ParseIdentifier(s string) (Identifier, error) {
	ns, path, found := strings.Cut(s, ":")
	if !found {
		ns, path = "", s
	}

	if ns == "" {
		ns = defaultNamespace
	}

	for i := 0; i < len(ns); i++ {
		if !isNamespaceChar(ns[i]) {
			return Identifier{}, choadraerr.NewDecode("identifier",
				fmt.Errorf("%w: %q", ErrInvalidNamespaceCharacter, ns))
		}
	}

	for i := 0; i < len(path); i++ {
		if !isPathChar(path[i]) {
			return Identifier{}, choadraerr.NewDecode("identifier",
				fmt.Errorf("%w: %q", ErrInvalidPathCharacter, path))
		}
	}

	return Identifier{Namespace: ns, Path: path}, nil
}

func isNamespaceChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_' || b == '.' || b == '-'
}

func isPathChar(b byte) bool {
	return isNamespaceChar(b) || b == '/'
}

// String renders the identifier back to its namespace:path wire form.
func (id Identifier) String() string {
	return id.Namespace + ":" + id.Path
}

// ReadIdentifier reads a String and parses it as an Identifier.
func (r *Reader) ReadIdentifier() (Identifier, error) {
	s, err := r.ReadString(DefaultStringLimit)
	if err != nil {
		return Identifier{}, err
	}

	return ParseIdentifier(s)
}

// WriteIdentifier writes id's namespace:path form as a String.
func (w *Writer) WriteIdentifier(id Identifier) error {
	return w.WriteString(id.String(), DefaultStringLimit)
}
