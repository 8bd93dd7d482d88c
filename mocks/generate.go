package mocks

//go:generate mockgen -destination storage.go -package mocks github.com/detox-ci/artifacts/storage Provider
