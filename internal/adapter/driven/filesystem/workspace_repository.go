package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/diillson/roreports-go/internal/shared/types"
)

// archiveTimestamp is the suffix layout used when an archive name is taken.
const archiveTimestamp = "20060102_150405"

// WorkspaceRepositoryImpl implementa o WorkspaceRepository sobre o sistema de arquivos local.
type WorkspaceRepositoryImpl struct {
	dirs        []string
	inDir       string
	archDir     string
	inputPrefix string
	now         func() time.Time
}

// NewWorkspaceRepository cria o repositório de diretórios a partir da configuração.
func NewWorkspaceRepository(cfg *types.Config) *WorkspaceRepositoryImpl {
	return &WorkspaceRepositoryImpl{
		dirs:        cfg.WorkDirs(),
		inDir:       cfg.InPath(),
		archDir:     cfg.ArchPath(),
		inputPrefix: cfg.InputPrefix,
		now:         time.Now,
	}
}

// WithClock replaces the clock used for archive suffixes.
func (r *WorkspaceRepositoryImpl) WithClock(now func() time.Time) *WorkspaceRepositoryImpl {
	r.now = now
	return r
}

// Provision cria os diretórios de trabalho que ainda não existem.
func (r *WorkspaceRepositoryImpl) Provision() error {
	for _, dir := range r.dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory '%s': %w", dir, err)
		}
	}
	return nil
}

// ListIncoming lista os arquivos "<prefix> *.csv" do diretório de entrada.
func (r *WorkspaceRepositoryImpl) ListIncoming() ([]string, error) {
	entries, err := os.ReadDir(r.inDir)
	if err != nil {
		return nil, fmt.Errorf("error listing incoming directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !r.matches(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(r.inDir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// matches implements the glob "<prefix> *.csv" without interpreting glob
// metacharacters that may appear in the prefix itself.
func (r *WorkspaceRepositoryImpl) matches(name string) bool {
	head := r.inputPrefix + " "
	return strings.HasPrefix(name, head) && strings.HasSuffix(name, ".csv") && len(name) >= len(head)+len(".csv")
}

// Archive move o arquivo para o diretório de arquivo sem sobrescrever nada.
func (r *WorkspaceRepositoryImpl) Archive(src string) (string, error) {
	target, err := r.archiveTarget(filepath.Base(src))
	if err != nil {
		return "", err
	}
	if err := moveFile(src, target); err != nil {
		return "", fmt.Errorf("error archiving %s: %w", filepath.Base(src), err)
	}
	return target, nil
}

// archiveTarget picks the first free name: the original one, then
// "<stem>_<YYYYMMDD_HHMMSS><ext>", then the same with a numeric suffix.
func (r *WorkspaceRepositoryImpl) archiveTarget(name string) (string, error) {
	candidate := filepath.Join(r.archDir, name)
	free, err := isFree(candidate)
	if err != nil || free {
		return candidate, err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	base := fmt.Sprintf("%s_%s", stem, r.now().Format(archiveTimestamp))

	candidate = filepath.Join(r.archDir, base+ext)
	for n := 1; ; n++ {
		free, err := isFree(candidate)
		if err != nil || free {
			return candidate, err
		}
		candidate = filepath.Join(r.archDir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}
}

func isFree(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	return false, err
}

// moveFile tenta renomear e, entre dispositivos diferentes, copia e remove a origem.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if _, statErr := os.Stat(src); statErr != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	in.Close()
	return os.Remove(src)
}
