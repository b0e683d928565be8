package scanner

import (
	"errors"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/nxtools/titleshelf/utilities"
)

// File names follow the common organiser layout of
// "Some Title [0100000000010000][v65536].nsp"
// Both bracket tags are optional; a file with neither tag nor any title
// text is unparseable

var (
	titleIDTag = regexp.MustCompile(`\[([0-9A-Fa-f]{16})\]`)
	versionTag = regexp.MustCompile(`\[v([0-9]+)\]`)
)

var ErrUnparseableName = errors.New("file name carries no title text or id")

type fileNameMeta struct {
	name    string
	titleID uint64
	version uint32
}

func parseFileName(fileName string) (fileNameMeta, error) {
	meta := fileNameMeta{}
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	if m := titleIDTag.FindStringSubmatch(stem); m != nil {
		if id, err := strconv.ParseUint(m[1], 16, 64); err == nil {
			meta.titleID = id
		}
	}
	if m := versionTag.FindStringSubmatch(stem); m != nil {
		if version, err := strconv.ParseUint(m[1], 10, 32); err == nil {
			meta.version = uint32(version)
		}
	}

	name := stem
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	meta.name = strings.TrimSpace(utilities.CleanName(name))

	if meta.name == "" && meta.titleID == 0 {
		return meta, ErrUnparseableName
	}
	return meta, nil
}
