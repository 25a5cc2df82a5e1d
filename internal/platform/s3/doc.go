// Package s3 archives deployment reports to S3-compatible object storage.
//
// Reports requested as s3://bucket/key are uploaded here. The endpoint and
// region come from SDACTL_S3_ENDPOINT and SDACTL_S3_REGION; credentials come
// from the standard AWS chain unless given explicitly.
package s3
