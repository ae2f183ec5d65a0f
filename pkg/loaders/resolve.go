package loaders

import (
	"strings"

	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ResolveScene builds the scene named by id: a built-in name, a discovered
// scene file ID ("file:<name>") or a path to a .toml description.
func ResolveScene(id string, width, height int) (*scene.Scene, error) {
	switch {
	case strings.HasPrefix(id, "file:"):
		files, err := scene.ListSceneFiles()
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == id {
				return LoadSceneFile(info.FilePath, width, height)
			}
		}
		return nil, xerrors.Errorf("while resolving %q: %w", id, scene.ErrUnknownScene)

	case strings.HasSuffix(id, ".toml"):
		return LoadSceneFile(id, width, height)

	default:
		return scene.Build(id, width, height)
	}
}
