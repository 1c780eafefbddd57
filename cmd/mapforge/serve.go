package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"

	"github.com/mapforge/mapforge/pkg/sourcefs"
	"github.com/mapforge/mapforge/pkg/span"
)

// positionRequest is the payload for the "mapforge/position" method: given
// a previously built file's path and a byte offset, resolve the UTF-8
// line/column position of that offset.
type positionRequest struct {
	Path   string `json:"path"`
	Offset uint32 `json:"offset"`
}

type positionResponse struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve position lookups over stdio JSON-RPC2",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	return cmd
}

// positionServer holds the registry of files the serve command has been
// asked to resolve positions in, populated lazily as requests name a path.
type positionServer struct {
	reg *sourcefs.ProcessWide
}

func runServe(ctx context.Context) error {
	logger.Infof("starting mapforge serve (stdio)")

	srv := &positionServer{reg: sourcefs.NewProcessWide()}

	rwc := &stdinoutCloser{stdin: os.Stdin, stdout: os.Stdout}
	stream := jsonrpc2.NewStream(rwc)
	conn := jsonrpc2.NewConn(stream)

	conn.Go(ctx, srv.handle)

	<-conn.Done()
	if err := conn.Err(); err != nil {
		logger.Errorf("connection closed with error: %v", err)
		return err
	}
	logger.Infof("mapforge serve stopped")
	return nil
}

func (s *positionServer) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if req.Method() != "mapforge/position" {
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.MethodNotFound, "unknown method: "+req.Method()))
	}

	var params positionRequest
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.ParseError, err.Error()))
	}

	id, ok := s.reg.GetSourceAtPath(params.Path)
	if !ok {
		content, err := os.ReadFile(params.Path)
		if err != nil {
			return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidParams, err.Error()))
		}
		id = s.reg.NewSource(params.Path, string(content))
	}

	pos := span.IntoLineColumnPosition[span.Utf8](span.Position{Offset: params.Offset, Source: id}, s.reg)
	return reply(ctx, positionResponse{Line: pos.Line, Column: pos.Column}, nil)
}

// stdinoutCloser wraps os.Stdin and os.Stdout as an io.ReadWriteCloser,
// adapted from the teacher's cmd/dingo-lsp/main.go.
type stdinoutCloser struct {
	stdin  *os.File
	stdout *os.File
}

func (s *stdinoutCloser) Read(p []byte) (int, error)  { return s.stdin.Read(p) }
func (s *stdinoutCloser) Write(p []byte) (int, error) { return s.stdout.Write(p) }
func (s *stdinoutCloser) Close() error                { return nil }

var _ io.ReadWriteCloser = (*stdinoutCloser)(nil)
