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

package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rtypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/model"
	"github.com/Netinhoklz/video-translate-legend-detection/internal/core/services"
)

// RekognitionService implements services.LabelDetector against the AWS
// Rekognition asynchronous video analysis API.
type RekognitionService struct {
	client *rekognition.Client
}

var _ services.LabelDetector = &RekognitionService{}

// NewRekognitionService wraps the given client.
func NewRekognitionService(client *rekognition.Client) *RekognitionService {
	return &RekognitionService{client: client}
}

// StartJob submits a label-detection job for the object and returns the
// service-assigned job id used for polling.
func (r *RekognitionService) StartJob(ctx context.Context, bucket, key string, minConfidence float32) (string, error) {
	resp, err := r.client.StartLabelDetection(ctx, &rekognition.StartLabelDetectionInput{
		Video: &rtypes.Video{
			S3Object: &rtypes.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
		MinConfidence: aws.Float32(minConfidence),
	})
	if err != nil {
		return "", fmt.Errorf("failed to start label detection for s3://%s/%s: %w", bucket, key, err)
	}
	return aws.ToString(resp.JobId), nil
}

// JobStatus reports the job's current state. On success every result page
// is drained so the returned labels are complete.
func (r *RekognitionService) JobStatus(ctx context.Context, jobID string) (*services.DetectionStatus, error) {
	status := &services.DetectionStatus{}
	var nextToken *string
	for {
		resp, err := r.client.GetLabelDetection(ctx, &rekognition.GetLabelDetectionInput{
			JobId:     aws.String(jobID),
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get label detection job %s: %w", jobID, err)
		}
		// Normalize the service's SUCCEEDED terminal state to the shared
		// state vocabulary the poller compares against.
		if resp.JobStatus == rtypes.VideoJobStatusSucceeded {
			status.State = services.StateCompleted
		} else {
			status.State = string(resp.JobStatus)
		}
		status.FailureReason = aws.ToString(resp.StatusMessage)
		if resp.JobStatus != rtypes.VideoJobStatusSucceeded {
			return status, nil
		}
		for _, detection := range resp.Labels {
			status.Labels = append(status.Labels, convertLabelDetection(detection))
		}
		nextToken = resp.NextToken
		if nextToken == nil {
			return status, nil
		}
	}
}

func convertLabelDetection(in rtypes.LabelDetection) model.LabelDetection {
	out := model.LabelDetection{
		TimestampMillis: in.Timestamp,
	}
	if in.Label == nil {
		return out
	}
	out.Name = aws.ToString(in.Label.Name)
	out.Confidence = float64(aws.ToFloat32(in.Label.Confidence))
	for _, instance := range in.Label.Instances {
		if instance.BoundingBox == nil {
			continue
		}
		out.Instances = append(out.Instances, model.BoundingBox{
			Left:   float64(aws.ToFloat32(instance.BoundingBox.Left)),
			Top:    float64(aws.ToFloat32(instance.BoundingBox.Top)),
			Width:  float64(aws.ToFloat32(instance.BoundingBox.Width)),
			Height: float64(aws.ToFloat32(instance.BoundingBox.Height)),
		})
	}
	return out
}
