// Package flight implements dremio.DB over Dremio's native Arrow Flight
// transport.
//
// A query round-trip is: GetFlightInfo with a CMD descriptor carrying the
// SQL, then DoGet on the returned ticket, then an IPC record reader over
// the stream. Authentication is the Flight basic-token handshake; the
// bearer token it yields is attached to every subsequent call.
package flight

import (
	"context"
	"crypto/tls"
	"errors"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/koustreak/dremcat/internal/dremio"
	"github.com/koustreak/dremcat/internal/errs"
)

// Driver is an Arrow Flight implementation of dremio.DB.
//
// One Driver owns one authenticated Flight connection. The discovery
// session builds a fresh Driver per selected database and never shares one
// across goroutines.
type Driver struct {
	client flight.Client
	authMD metadata.MD // bearer token from the basic-auth handshake
}

// New dials the engine's Flight endpoint described by opts, authenticates,
// and verifies the session with a trivial query before returning.
func New(ctx context.Context, opts dremio.Options) (*Driver, error) {
	ep, err := opts.Endpoint()
	if err != nil {
		return nil, err
	}

	var creds credentials.TransportCredentials
	if ep.UseTLS {
		creds = credentials.NewTLS(&tls.Config{InsecureSkipVerify: ep.InsecureSkipVerify})
	} else {
		creds = insecure.NewCredentials()
	}

	client, err := flight.NewClientWithMiddleware(ep.Addr, nil, nil,
		grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to dial flight endpoint", err)
	}

	authCtx, err := client.AuthenticateBasicToken(ctx, ep.Username, ep.Password)
	if err != nil {
		_ = client.Close()
		return nil, mapError(err, "flight authentication failed")
	}

	d := &Driver{client: client}
	if md, ok := metadata.FromOutgoingContext(authCtx); ok {
		d.authMD = md
	}

	if err := d.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return d, nil
}

// Connect is a dremio.Connector for this driver.
func Connect(ctx context.Context, opts dremio.Options) (dremio.DB, error) {
	return New(ctx, opts)
}

// withAuth attaches the session's bearer token to an outgoing context.
func (d *Driver) withAuth(ctx context.Context) context.Context {
	if d.authMD == nil {
		return ctx
	}
	return metadata.NewOutgoingContext(ctx, d.authMD)
}

// --- dremio.DB implementation ---

// Ping verifies the engine is reachable and the session token is accepted.
func (d *Driver) Ping(ctx context.Context) error {
	rows, err := d.Query(ctx, "SELECT 1")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
	}
	if err := rows.Err(); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Close tears down the Flight connection.
func (d *Driver) Close() error {
	return d.client.Close()
}

// Query submits a self-contained SQL command and streams back its rows.
func (d *Driver) Query(ctx context.Context, sql string) (dremio.Rows, error) {
	ctx = d.withAuth(ctx)

	info, err := d.client.GetFlightInfo(ctx, &flight.FlightDescriptor{
		Type: flight.DescriptorCMD,
		Cmd:  []byte(sql),
	})
	if err != nil {
		return nil, mapError(err, "query submission failed")
	}
	if len(info.Endpoint) == 0 {
		return nil, errs.New(errs.ErrKindQueryFailed, "flight info carried no endpoints")
	}

	stream, err := d.client.DoGet(ctx, info.Endpoint[0].Ticket)
	if err != nil {
		return nil, mapError(err, "result stream failed to open")
	}

	rdr, err := flight.NewRecordReader(stream)
	if err != nil {
		return nil, mapError(err, "result stream is not valid arrow data")
	}
	return newRows(rdr), nil
}

// --- error mapping ---

// mapError translates grpc / flight native errors into *errs.Error,
// the same way the engine-agnostic layers expect them.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.DeadlineExceeded, codes.Canceled:
			return errs.Wrap(errs.ErrKindTimeout, msg, err)
		case codes.Unauthenticated:
			return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
		case codes.PermissionDenied:
			return errs.Wrap(errs.ErrKindPermissionDenied, msg, err)
		case codes.NotFound:
			return errs.Wrap(errs.ErrKindNotFound, msg, err)
		case codes.InvalidArgument:
			return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
		case codes.Unavailable:
			return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
		case codes.Internal:
			return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
		}
	}

	// Fallthrough: connection-level errors (TLS, network, auth)
	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}
