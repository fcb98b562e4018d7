// Folio: A streamlined CLI tool for searching and downloading web novels.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package rpc

import (
	"io"
	"net/rpc"
	"net/rpc/jsonrpc"

	"Folio/pkg/engine"
)

// NewServer creates a new RPC server with all services registered. Progress
// events are written to events.
func NewServer(e *engine.Engine, version string, events io.Writer) (*rpc.Server, error) {
	server := rpc.NewServer()
	services := &Services{
		engine:  e,
		version: version,
		events:  NewEmitter(events),
	}

	registrations := map[string]interface{}{
		"Version":  &VersionService{services: services},
		"Sources":  &SourcesService{services: services},
		"Search":   &SearchService{services: services},
		"Book":     &BookService{services: services},
		"Download": &DownloadService{services: services},
	}
	for name, svc := range registrations {
		if err := server.RegisterName(name, svc); err != nil {
			return nil, err
		}
	}
	return server, nil
}

// Serve answers JSON-RPC requests on conn until it is closed
func Serve(server *rpc.Server, conn io.ReadWriteCloser) {
	server.ServeCodec(jsonrpc.NewServerCodec(conn))
}
