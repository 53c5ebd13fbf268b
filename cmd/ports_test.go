package cmd

import (
	"bytes"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortsCommand(t *testing.T) {
	useTestSettings(t, "")
	t.Setenv("LOOPAUTH_LISTENER_PORT_START", "38795")
	t.Setenv("LOOPAUTH_LISTENER_PORT_END", "38797")

	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(38795)))
	if err != nil {
		t.Skipf("port 38795 already in use: %v", err)
	}
	defer ln.Close()

	var out bytes.Buffer
	portsCmd := newPortsCmd()
	portsCmd.SetOut(&out)
	portsCmd.SetArgs([]string{})

	err = portsCmd.Execute()
	if err != nil {
		t.Skipf("test ports busy: %v", err)
	}

	output := out.String()
	assert.Contains(t, output, "38795")
	assert.Contains(t, output, "38797")
	assert.Contains(t, output, "in use")
	assert.Contains(t, output, "of 3 ports free on 127.0.0.1")
}

func TestPortsCommand_AllBusy(t *testing.T) {
	useTestSettings(t, "")
	t.Setenv("LOOPAUTH_LISTENER_PORT_START", "38798")
	t.Setenv("LOOPAUTH_LISTENER_PORT_END", "38798")

	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", "38798"))
	if err != nil {
		t.Skipf("port 38798 already in use: %v", err)
	}
	defer ln.Close()

	portsCmd := newPortsCmd()
	portsCmd.SetOut(&bytes.Buffer{})
	portsCmd.SetArgs([]string{})
	err = portsCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCodeNoPort, getExitCode(err))
}
