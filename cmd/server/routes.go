// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
)

// SignUploadRequest asks for a signed upload URL for one video file.
type SignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
}

// SignUploadResponse carries the generated job identity and the URL the
// client PUTs the file to. The same job_id and filename are sent back to
// the process endpoint afterwards.
type SignUploadResponse struct {
	JobID string `json:"job_id"`
	Key   string `json:"key"`
	URL   string `json:"url"`
}

// ProcessRequest identifies a previously uploaded video to annotate.
type ProcessRequest struct {
	JobID    string `json:"job_id" binding:"required"`
	Filename string `json:"filename" binding:"required"`
}

// VideoRouter sets up the API routes for the annotation service:
//
//   - POST /videos/uploads/sign: issues a signed PUT URL for a direct
//     upload to the object store, minting the job ID that namespaces every
//     artifact of the run.
//   - POST /videos/process: runs the full annotation pipeline against the
//     uploaded object and returns the published result. The call blocks
//     for the duration of the run.
func VideoRouter(r *gin.RouterGroup) {
	videos := r.Group("/videos")
	{
		videos.POST("/uploads/sign", func(c *gin.Context) {
			var req SignUploadRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			contentType := req.ContentType
			if contentType == "" {
				contentType = "video/mp4"
			}

			jobID := uuid.NewString()
			key := uploadKey(jobID, req.Filename)
			url, err := state.cloud.ObjectStore.SignedPutURL(c.Request.Context(), key, contentType, state.config.SignedURLTTL())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate upload URL"})
				return
			}
			c.JSON(http.StatusOK, SignUploadResponse{JobID: jobID, Key: key, URL: url})
		})

		videos.POST("/process", func(c *gin.Context) {
			var req ProcessRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			job := model.NewJob(req.JobID, state.config.Storage.Bucket,
				uploadKey(req.JobID, req.Filename), req.Filename)
			result, err := state.workflow.Run(c.Request.Context(), job)
			if err != nil {
				var failure *model.PipelineFailure
				if errors.As(err, &failure) {
					c.JSON(http.StatusInternalServerError, gin.H{"error": failure.Message})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, result)
		})
	}
}

func uploadKey(jobID, filename string) string {
	return path.Join(state.config.Storage.UploadPrefix, fmt.Sprintf("%s_%s", jobID, filename))
}
