/*
 * MinIO Go Library for Amazon S3 Compatible Cloud Storage
 * Copyright 2015-2025 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package credentials

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY",
		"AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY",
		"AWS_SESSION_TOKEN",
		"MINIO_ROOT_USER", "MINIO_ROOT_PASSWORD",
		"MINIO_ACCESS_KEY", "MINIO_SECRET_KEY",
	} {
		t.Setenv(name, "")
	}
}

// Tests the AWS environment provider, including the legacy variable names.
func TestEnvAWSRetrieve(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_ACCESS_KEY_ID", "access")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_SESSION_TOKEN", "token")

	e := &EnvAWS{}
	if !e.IsExpired() {
		t.Error("provider must start expired before Retrieve")
	}
	creds, err := e.Retrieve()
	if err != nil {
		t.Fatal(err)
	}
	expected := Value{
		AccessKeyID:     "access",
		SecretAccessKey: "secret",
		SessionToken:    "token",
		SignerType:      SignatureV4,
	}
	if creds != expected {
		t.Errorf("expected %+v, got %+v", expected, creds)
	}
	if e.IsExpired() {
		t.Error("provider must not be expired after Retrieve")
	}

	// Legacy variable names work too.
	clearEnv(t)
	t.Setenv("AWS_ACCESS_KEY", "legacy-access")
	t.Setenv("AWS_SECRET_KEY", "legacy-secret")
	creds, err = (&EnvAWS{}).Retrieve()
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "legacy-access" || creds.SecretAccessKey != "legacy-secret" {
		t.Errorf("legacy variables not honored: %+v", creds)
	}
}

// Tests an empty AWS environment yields anonymous credentials.
func TestEnvAWSAnonymous(t *testing.T) {
	clearEnv(t)
	creds, err := (&EnvAWS{}).Retrieve()
	if err != nil {
		t.Fatal(err)
	}
	if !creds.SignerType.IsAnonymous() {
		t.Errorf("expected anonymous signer type, got %v", creds.SignerType)
	}
}

// Tests the MinIO environment provider prefers the root user variables.
func TestEnvMinioRetrieve(t *testing.T) {
	clearEnv(t)
	t.Setenv("MINIO_ROOT_USER", "rootuser")
	t.Setenv("MINIO_ROOT_PASSWORD", "rootpassword")
	t.Setenv("MINIO_ACCESS_KEY", "accesskey")
	t.Setenv("MINIO_SECRET_KEY", "secretkey")

	creds, err := (&EnvMinio{}).Retrieve()
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "rootuser" || creds.SecretAccessKey != "rootpassword" {
		t.Errorf("root user variables must win: %+v", creds)
	}

	// Fall back to the legacy access key variables.
	clearEnv(t)
	t.Setenv("MINIO_ACCESS_KEY", "accesskey")
	t.Setenv("MINIO_SECRET_KEY", "secretkey")
	creds, err = (&EnvMinio{}).Retrieve()
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "accesskey" || creds.SecretAccessKey != "secretkey" {
		t.Errorf("legacy variables not honored: %+v", creds)
	}

	clearEnv(t)
	creds, err = (&EnvMinio{}).Retrieve()
	if err != nil {
		t.Fatal(err)
	}
	if !creds.SignerType.IsAnonymous() {
		t.Errorf("expected anonymous signer type, got %v", creds.SignerType)
	}
}
