package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/kontomondo/fantomas/parser"
	"github.com/kontomondo/fantomas/syntax"
)

func TestLoadBytes(t *testing.T) {
	source := "let a = 7 // note\n"

	file, err := New().LoadBytes(context.Background(), "test.fsx", []byte(source))
	assert.NoError(t, err)
	assert.Equal(t, 1, len(file.Tree.Decls))
	assert.NotZero(t, file.Source)

	// The raw stream retains the comment the tree does not.
	var sawComment bool
	for _, tok := range file.Tokens {
		if tok.Kind == syntax.LINE_COMMENT {
			sawComment = true
		}
	}
	assert.True(t, sawComment)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.fsx")
	assert.NoError(t, os.WriteFile(path, []byte("let a = 1\n"), 0o644))

	file, err := New().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(file.Tree.Decls))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "absent.fsx"))
	assert.Error(t, err)
}

func TestLoadBytesParseError(t *testing.T) {
	_, err := New().LoadBytes(context.Background(), "bad.fsx", []byte("let = 1\n"))
	assert.Error(t, err)

	var parseErr *parser.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "bad.fsx", parseErr.Pos.Filename)
}

func TestLoadMaxTrustedLineOption(t *testing.T) {
	file, err := New(WithMaxTrustedLine(16)).LoadBytes(context.Background(), "t.fsx", []byte("let a = 1\n"))
	assert.NoError(t, err)
	assert.Equal(t, "let a = 1", file.Source.Line(1))
}

func TestServiceSharesOneLoader(t *testing.T) {
	svc := NewService(WithMaxTrustedLine(64))

	var wg sync.WaitGroup
	loaders := make([]*Loader, 8)
	for i := range loaders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			loaders[i] = svc.Loader()
		}(i)
	}
	wg.Wait()

	for _, l := range loaders {
		assert.True(t, l == loaders[0])
		assert.Equal(t, 64, l.MaxTrustedLine)
	}
}

func TestServiceLoadBytes(t *testing.T) {
	svc := NewService()
	file, err := svc.LoadBytes(context.Background(), "s.fsx", []byte("let a = 1\n"))
	assert.NoError(t, err)
	assert.Equal(t, 1, len(file.Tree.Decls))
}
