// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func TestNewS3BackupStoreRequiresCredentials(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		accessKey string
		secretKey string
	}{
		{"no endpoint", "", "key", "secret"},
		{"no access key", "https://s3.example.com", "", "secret"},
		{"no secret key", "https://s3.example.com", "key", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3BackupStore(tt.endpoint, "eu-central-1", tt.accessKey, tt.secretKey, "backups")
			if err == nil {
				t.Error("expected configuration error")
			}
		})
	}

	s, err := NewS3BackupStore("https://s3.example.com/", "eu-central-1", "key", "secret", "backups")
	if err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if s.bucket != "backups" {
		t.Errorf("bucket: got %q", s.bucket)
	}
}

func TestIsPreconditionFailed(t *testing.T) {
	precondition := &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "object exists"}

	if !isPreconditionFailed(precondition) {
		t.Error("direct API error not recognized")
	}
	if !isPreconditionFailed(fmt.Errorf("put object: %w", precondition)) {
		t.Error("wrapped API error not recognized")
	}
	if isPreconditionFailed(&smithy.GenericAPIError{Code: "AccessDenied"}) {
		t.Error("unrelated API error misclassified")
	}
	if isPreconditionFailed(errors.New("connection refused")) {
		t.Error("plain error misclassified")
	}
	if isPreconditionFailed(nil) {
		t.Error("nil misclassified")
	}
}
