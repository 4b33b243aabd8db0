package common

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/static"
)

// Implements static.ServeFileSystem on top of an embed.FS subtree so the
// frontend shell can be served from the binary.
type embedFileSystem struct {
	http.FileSystem
}

func (f embedFileSystem) Exists(prefix string, path string) bool {
	_, err := f.Open(path)
	return err == nil
}

func EmbedFolder(fsEmbed embed.FS, targetPath string) static.ServeFileSystem {
	sub, err := fs.Sub(fsEmbed, targetPath)
	if err != nil {
		panic(err)
	}
	return embedFileSystem{
		FileSystem: http.FS(sub),
	}
}
