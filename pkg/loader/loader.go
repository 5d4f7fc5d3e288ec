package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
	"gopkg.in/yaml.v3"
)

// ErrNoPanels is returned when no content file can be found.
var ErrNoPanels = errors.New("no panel content found")

// ContentDir is the per-project directory holding panel content.
const ContentDir = ".pnv"

// candidateFiles are tried in order by LoadPanels.
var candidateFiles = []string{"panels.yaml", "panels.yml", "panels.jsonl"}

// contentFile is the YAML document shape: either a bare list of panels or
// a mapping with a "panels" key.
type contentFile struct {
	Panels []model.PanelRecord `yaml:"panels"`
}

// FindContentFile returns the first panel content file under repoPath/.pnv.
func FindContentFile(repoPath string) (string, error) {
	if repoPath == "" {
		var err error
		repoPath, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
	}
	for _, name := range candidateFiles {
		p := filepath.Join(repoPath, ContentDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w under %s", ErrNoPanels, filepath.Join(repoPath, ContentDir))
}

// LoadPanels reads panels from the content file in the given repository path.
func LoadPanels(repoPath string) ([]model.PanelRecord, error) {
	path, err := FindContentFile(repoPath)
	if err != nil {
		return nil, err
	}
	return LoadPanelsFromFile(path)
}

// LoadPanelsFromFile reads panels from a YAML or JSONL file. Panels that
// fail validation are skipped; order of the rest is preserved.
func LoadPanelsFromFile(path string) ([]model.PanelRecord, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w at %s", ErrNoPanels, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read panels file: %w", err)
	}

	var panels []model.PanelRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		panels, err = parseJSONL(data)
	default:
		panels, err = ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return keepValid(panels, path), nil
}

// ParseYAML decodes a panel list or a {panels: [...]} document.
func ParseYAML(data []byte) ([]model.PanelRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var panels []model.PanelRecord
		if err := node.Content[0].Decode(&panels); err != nil {
			return nil, err
		}
		return panels, nil
	}
	var doc contentFile
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Panels, nil
}

func parseJSONL(data []byte) ([]model.PanelRecord, error) {
	var panels []model.PanelRecord
	scanner := bufio.NewScanner(bytes.NewReader(data))
	const maxCapacity = 1024 * 1024 // 1MB per panel
	scanner.Buffer(make([]byte, 0, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var p model.PanelRecord
		if err := json.Unmarshal(line, &p); err != nil {
			// Skip malformed lines but continue loading the rest
			log.Printf("[loader] skipping malformed line %d: %v", lineNum, err)
			continue
		}
		panels = append(panels, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading panels: %w", err)
	}
	return panels, nil
}

func keepValid(panels []model.PanelRecord, source string) []model.PanelRecord {
	out := make([]model.PanelRecord, 0, len(panels))
	for i := range panels {
		if err := panels[i].Validate(); err != nil {
			log.Printf("[loader] %s: skipping panel %d: %v", source, i, err)
			continue
		}
		out = append(out, panels[i].Normalize())
	}
	return out
}
