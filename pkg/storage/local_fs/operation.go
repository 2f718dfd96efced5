package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/block-note-service/pkg/fileurl"

	"github.com/pkg/errors"
)

// SendFile writes the reader content to the configured save path.
// SendFile 将 reader 内容写入配置的保存目录
func (p *LocalFS) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {

	savePath := filepath.Join(p.Config.SavePath, pathKey)

	if err := fileurl.CreatePath(savePath, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(savePath)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if _, err = io.Copy(out, file); err != nil {
		out.Close()
		return "", errors.Wrap(err, "local_fs")
	}
	if err = out.Close(); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(savePath, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}

	return savePath, nil
}

// SendContent writes raw bytes to the configured save path.
// SendContent 将字节内容写入配置的保存目录
func (p *LocalFS) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {

	savePath := filepath.Join(p.Config.SavePath, pathKey)

	if err := fileurl.CreatePath(savePath, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if err := os.WriteFile(savePath, content, 0o644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		if err := os.Chtimes(savePath, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}

	return savePath, nil
}
