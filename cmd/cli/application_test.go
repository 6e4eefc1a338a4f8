package cli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testValidTokenConstant        = "ghp_valid"
	testExistingShaConstant       = "3f786850e387550fdab836ed7e6dc881de23001b"
	testContentsPathConstant      = "/repos/alice/demo/contents/"
	testConfigurationFileConstant = "config.yaml"
)

type capturedWrite struct {
	Method string
	Path   string
	Body   map[string]any
}

type sessionServer struct {
	mutex       sync.Mutex
	server      *httptest.Server
	writes      []capturedWrite
	contentGets []string
}

func newSessionServer(testInstance *testing.T) *sessionServer {
	fake := &sessionServer{}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.handle))
	testInstance.Cleanup(fake.server.Close)
	return fake
}

func (fake *sessionServer) handle(responseWriter http.ResponseWriter, request *http.Request) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	responseWriter.Header().Set("Content-Type", "application/json")
	if request.Header.Get("Authorization") != "token "+testValidTokenConstant {
		responseWriter.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(responseWriter, `{"message":"Bad credentials"}`)
		return
	}

	switch {
	case request.Method == http.MethodGet && request.URL.Path == "/user":
		_, _ = io.WriteString(responseWriter, `{"login":"alice"}`)
	case request.Method == http.MethodGet && request.URL.Path == "/user/repos":
		_, _ = io.WriteString(responseWriter, `[{"name":"demo"}]`)
	case request.Method == http.MethodGet && request.URL.Path == testContentsPathConstant:
		_, _ = io.WriteString(responseWriter, `[{"name":"notes.txt","path":"notes.txt","type":"file"},{"name":"src","path":"src","type":"dir"}]`)
	case request.Method == http.MethodGet && request.URL.Path == testContentsPathConstant+"notes.txt":
		fake.contentGets = append(fake.contentGets, request.URL.Path)
		encodedContent := base64.StdEncoding.EncodeToString([]byte("first draft"))
		_, _ = fmt.Fprintf(responseWriter, `{"type":"file","encoding":"base64","name":"notes.txt","path":"notes.txt","sha":%q,"content":%q}`, testExistingShaConstant, encodedContent)
	case request.Method == http.MethodPut && strings.HasPrefix(request.URL.Path, testContentsPathConstant):
		var body map[string]any
		_ = json.NewDecoder(request.Body).Decode(&body)
		fake.writes = append(fake.writes, capturedWrite{Method: request.Method, Path: request.URL.Path, Body: body})
		_, _ = io.WriteString(responseWriter, `{"content":{"sha":"95d09f2b10159347eece71399a7e2e907ea3df4f"}}`)
	default:
		responseWriter.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(responseWriter, `{"message":"Not Found"}`)
	}
}

func writeConfigurationFile(testInstance *testing.T, content string) string {
	testInstance.Helper()
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(content), 0o600))
	return configurationPath
}

func TestApplicationEditSessionAgainstAPI(testInstance *testing.T) {
	fake := newSessionServer(testInstance)
	configurationPath := writeConfigurationFile(testInstance, fmt.Sprintf(
		"common:\n  log_level: error\nsession:\n  api_base_url: %s\n  temporary_directory: %s\n",
		fake.server.URL,
		testInstance.TempDir(),
	))
	testInstance.Setenv("RAWDROP_SESSION_RAW_BRANCH", "trunk")

	application := NewApplication()
	output := &strings.Builder{}
	application.rootCommand.SetIn(strings.NewReader("ghp_invalid\n" + testValidTokenConstant + "\ny\n1\n4\n1\nhello\n5\n"))
	application.rootCommand.SetOut(output)
	application.rootCommand.SetArgs([]string{"--config", configurationPath})

	require.NoError(testInstance, application.Execute())

	require.Len(testInstance, fake.writes, 1)
	write := fake.writes[0]
	require.Equal(testInstance, testContentsPathConstant+"notes.txt", write.Path)
	require.Equal(testInstance, testExistingShaConstant, write.Body["sha"])
	require.Equal(testInstance, "Update notes.txt", write.Body["message"])
	decodedContent, decodeError := base64.StdEncoding.DecodeString(write.Body["content"].(string))
	require.NoError(testInstance, decodeError)
	require.Equal(testInstance, "hello", string(decodedContent))

	consoleOutput := output.String()
	require.Contains(testInstance, consoleOutput, "Invalid token:")
	require.Equal(testInstance, 1, strings.Count(consoleOutput, "Authenticated as alice"))
	require.Contains(testInstance, consoleOutput, "Current content of notes.txt:\nfirst draft")
	require.Contains(testInstance, consoleOutput, "Raw link: https://raw.githubusercontent.com/alice/demo/trunk/notes.txt")
	require.Equal(testInstance, "error", application.configuration.Common.LogLevel)
	require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)
}

func TestApplicationFlagOverridesLogging(testInstance *testing.T) {
	application := NewApplication()
	application.rootCommand.SetIn(strings.NewReader(""))
	application.rootCommand.SetOut(&strings.Builder{})
	application.rootCommand.SetArgs([]string{"--log-level", "error", "--log-format", "structured"})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, "error", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.Equal(testInstance, "main", application.configuration.Session.RawBranch)
}

func TestApplicationRejectsInvalidLogLevel(testInstance *testing.T) {
	application := NewApplication()
	application.rootCommand.SetIn(strings.NewReader(""))
	application.rootCommand.SetOut(&strings.Builder{})
	application.rootCommand.SetArgs([]string{"--log-level", "verbose"})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}

func TestApplicationMissingConfigurationFile(testInstance *testing.T) {
	application := NewApplication()
	application.rootCommand.SetArgs([]string{"--config", filepath.Join(testInstance.TempDir(), "absent.yaml")})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to load configuration")
}

func TestApplicationEndsSessionWhenCanceledAtPrompt(testInstance *testing.T) {
	inputReader, inputWriter := io.Pipe()
	testInstance.Cleanup(func() {
		_ = inputWriter.Close()
	})

	application := NewApplication()
	output := &strings.Builder{}
	application.rootCommand.SetIn(inputReader)
	application.rootCommand.SetOut(output)
	application.rootCommand.SetArgs([]string{"--log-level", "error"})

	executionContext, cancel := context.WithCancel(context.Background())
	executionErrors := make(chan error, 1)
	go func() {
		executionErrors <- application.executeWithContext(executionContext)
	}()

	time.AfterFunc(50*time.Millisecond, cancel)

	select {
	case executionError := <-executionErrors:
		require.ErrorIs(testInstance, executionError, context.Canceled)
	case <-time.After(5 * time.Second):
		testInstance.Fatal("session kept waiting for input after cancellation")
	}
}
