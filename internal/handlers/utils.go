package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/adapter"
	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
)

var errNoDocument = errors.New("no document was provided")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// the status is already written
		logRH.Error("Error encoding response", "error", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "traceId", utils.TraceID(ctx), "error", ctx.Err())
		return false
	}
	return true
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func getTargetDirectory(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		root, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(root, dir)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

// saveUpload copies the multipart file field "document" into dir. A request
// without a file returns errNoDocument.
func saveUpload(r *http.Request, dir string) (path string, name string, err error) {
	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", "", errNoDocument
		}
		return "", "", fmt.Errorf("could not retrieve file: %w", err)
	}
	defer fileReader.Close()

	targetDir, err := getTargetDirectory(dir)
	if err != nil {
		return "", "", fmt.Errorf("storage error: %w", err)
	}

	name = filepath.Base(fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, fmt.Sprintf("%d-%s", time.Now().UnixNano(), name))
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		return "", "", fmt.Errorf("storage error: %w", err)
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		_ = os.Remove(tempFilePath)
		return "", "", fmt.Errorf("write error: %w", err)
	}
	return tempFilePath, name, nil
}

func removeUpload(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logRH.Warn("Failed to remove upload", "path", path, "error", err)
	}
}

// summaryRequestFromForm reads the prompt and strategy fields shared by the form and the api.
func summaryRequestFromForm(r *http.Request) jobModel.SummaryRequest {
	return jobModel.SummaryRequest{
		UseRefine:     parseCheckbox(r.FormValue("use_refine")),
		ChunkPrompt:   r.FormValue("chunk_prompt"),
		CombinePrompt: r.FormValue("combine_prompt"),
	}
}

// browsers send "on" for a ticked checkbox
func parseCheckbox(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "on" || value == "yes" {
		return true
	}
	b, _ := strconv.ParseBool(value)
	return b
}
