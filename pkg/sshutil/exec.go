package sshutil

import (
	"bytes"
	"context"

	"golang.org/x/crypto/ssh"
)

// Exec runs a command on the remote host and returns the output.
// Returns stdout, stderr, exit code, and any error.
// Exit code is -1 if the command couldn't be executed at all.
//
// The context bounds the whole command: when it is cancelled or expires the
// session is torn down and ctx.Err() is returned, so a hung remote command
// can't outlive its budget.
func (c *Client) Exec(ctx context.Context, cmd string) (stdout, stderr []byte, exitCode int, err error) {
	session, err := c.Client.NewSession()
	if err != nil {
		return nil, nil, -1, err
	}
	defer session.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	if err := session.Start(cmd); err != nil {
		return nil, nil, -1, err
	}

	done := make(chan error, 1)
	go func() {
		done <- session.Wait()
	}()

	select {
	case <-ctx.Done():
		// Tear down the session so the Wait goroutine unblocks.
		_ = session.Close()
		<-done
		return stdoutBuf.Bytes(), stderrBuf.Bytes(), -1, ctx.Err()
	case waitErr := <-done:
		if waitErr != nil {
			if exitErr, ok := waitErr.(*ssh.ExitError); ok {
				// Command ran, just had non-zero exit
				return stdoutBuf.Bytes(), stderrBuf.Bytes(), exitErr.ExitStatus(), nil
			}
			// ExitMissingError and friends: the stream closed before the
			// remote signalled completion.
			return stdoutBuf.Bytes(), stderrBuf.Bytes(), -1, waitErr
		}
		return stdoutBuf.Bytes(), stderrBuf.Bytes(), 0, nil
	}
}
