package local_fs

import (
	"os"
	"path/filepath"

	"github.com/haierkeys/block-note-service/pkg/fileurl"
)

func (p *LocalFS) Delete(pathKey string) error {
	savePath := filepath.Join(p.Config.SavePath, pathKey)
	if fileurl.IsExist(savePath) {
		return os.Remove(savePath)
	}
	return nil
}
