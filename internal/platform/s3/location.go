package s3

import (
	"fmt"
	"strings"
)

const scheme = "s3://"

// Location is an object address.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return scheme + l.Bucket + "/" + l.Key
}

// IsLocation reports whether s is an s3:// address.
func IsLocation(s string) bool {
	return strings.HasPrefix(s, scheme)
}

// ParseLocation parses s3://bucket/key. Both parts are required.
func ParseLocation(s string) (Location, error) {
	if !IsLocation(s) {
		return Location{}, fmt.Errorf("invalid object location %q: missing %s prefix", s, scheme)
	}
	bucket, key, _ := strings.Cut(strings.TrimPrefix(s, scheme), "/")
	if bucket == "" || key == "" {
		return Location{}, fmt.Errorf("invalid object location %q: expected %sbucket/key", s, scheme)
	}
	return Location{Bucket: bucket, Key: key}, nil
}
