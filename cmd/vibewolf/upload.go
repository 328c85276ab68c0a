package vibewolf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vibewolf/vibewolf/internal/git"
	"github.com/vibewolf/vibewolf/internal/report"
	"github.com/vibewolf/vibewolf/internal/types"
)

const uploadSchemaVersion = "1"

type uploadEnvelope struct {
	Schema string `json:"schema_version"`
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
	report.Document
}

func uploadReport(ctx context.Context, url, token string, findings []types.Finding, opts report.Options, md git.Metadata, noMeta bool) error {
	env := uploadEnvelope{Schema: uploadSchemaVersion, Document: report.NewDocument(findings, opts)}
	if !noMeta {
		env.Repo, env.Commit, env.Branch = md.Repo, md.Commit, md.Branch
	}
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload status %d", resp.StatusCode)
	}
	log.Debugw("uploaded report", "url", url, "findings", len(findings))
	return nil
}
