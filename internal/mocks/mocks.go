// File: internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
	"github.com/xkilldash9x/a11y-lighthouse/internal/config"
)

// -- Config Mock --

// MockConfig mocks the config.Interface.
type MockConfig struct {
	mock.Mock
}

// --- Getters ---

func (m *MockConfig) Logger() config.LoggerConfig {
	args := m.Called()
	return args.Get(0).(config.LoggerConfig)
}

func (m *MockConfig) Browser() config.BrowserConfig {
	args := m.Called()
	return args.Get(0).(config.BrowserConfig)
}

func (m *MockConfig) Lighthouse() config.LighthouseConfig {
	args := m.Called()
	return args.Get(0).(config.LighthouseConfig)
}

func (m *MockConfig) Audit() config.AuditConfig {
	args := m.Called()
	return args.Get(0).(config.AuditConfig)
}

func (m *MockConfig) Engine() config.EngineConfig {
	args := m.Called()
	return args.Get(0).(config.EngineConfig)
}

// --- Setters ---

func (m *MockConfig) SetBrowserHeadless(b bool) {
	m.Called(b)
}

func (m *MockConfig) SetEngineConcurrency(n int) {
	m.Called(n)
}

func (m *MockConfig) SetAuditZeroWeightPolicy(p string) {
	m.Called(p)
}

var _ config.Interface = (*MockConfig)(nil)

// -- Audit Engine Mock --

// MockAuditEngine mocks a Lighthouse runner.
type MockAuditEngine struct {
	mock.Mock
}

func (m *MockAuditEngine) RunAudit(ctx context.Context, url string, opts schemas.AuditOptions) (*schemas.AuditReport, error) {
	args := m.Called(ctx, url, opts)
	report, _ := args.Get(0).(*schemas.AuditReport)
	return report, args.Error(1)
}

// -- Page Mock --

// MockPage mocks a browser page that owns resources.
type MockPage struct {
	mock.Mock
}

func (m *MockPage) URL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPage) DebuggerEndpoint() string {
	return m.Called().String(0)
}

func (m *MockPage) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
