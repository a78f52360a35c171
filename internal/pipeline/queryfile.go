// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-scout/pkg/types"
)

// QueryFile is the on-disk form of a batch of search requests. The
// researcher lists queries once and runs them in a single invocation.
type QueryFile struct {
	Requests []types.SearchRequest `yaml:"requests"`
}

// LoadRequests reads a YAML query file and returns its requests.
// Each request must carry a query; omitted max_results and years_back
// pick up the configured defaults during normalization.
func LoadRequests(path string) ([]types.SearchRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}

	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	if len(qf.Requests) == 0 {
		return nil, fmt.Errorf("query file %s contains no requests", path)
	}

	for i, req := range qf.Requests {
		if strings.TrimSpace(req.Query) == "" {
			return nil, fmt.Errorf("request %d: missing query", i+1)
		}
		if req.MaxResults < 0 {
			return nil, fmt.Errorf("request %d: negative max_results", i+1)
		}
	}
	return qf.Requests, nil
}
