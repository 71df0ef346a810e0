package link

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

// fakePort replays scripted read chunks; an exhausted script behaves like a
// read timeout.
type fakePort struct {
	written  bytes.Buffer
	chunks   [][]byte
	readErr  error
	timeouts []time.Duration
	closed   int
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.readErr != nil {
		return 0, p.readErr
	}
	if len(p.chunks) == 0 {
		return 0, nil
	}
	n := copy(b, p.chunks[0])
	if n < len(p.chunks[0]) {
		p.chunks[0] = p.chunks[0][n:]
	} else {
		p.chunks = p.chunks[1:]
	}
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) { return p.written.Write(b) }

func (p *fakePort) SetReadTimeout(t time.Duration) error {
	p.timeouts = append(p.timeouts, t)
	return nil
}

func (p *fakePort) Close() error {
	p.closed++
	return nil
}

func TestLink_WriteLine(t *testing.T) {
	port := &fakePort{}
	l := New(port, 0)

	if err := l.WriteLine("(0,2,5)(1,2,5)"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if got := port.written.String(); got != "(0,2,5)(1,2,5)\n" {
		t.Errorf("written = %q", got)
	}
	if l.Name() != "" {
		t.Errorf("Name() = %q, want empty for a wrapped port", l.Name())
	}
	if l.timeout != DefaultAckTimeout {
		t.Errorf("timeout = %v, want %v", l.timeout, DefaultAckTimeout)
	}
}

func TestLink_ReadLine(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []string
	}{
		{"no reply", nil, []string{""}},
		{"single line", []string{"OK\r\n"}, []string{"OK"}},
		{"split across reads", []string{"do", "ne\n"}, []string{"done"}},
		{"two lines in one read", []string{"a\nb\n"}, []string{"a", "b"}},
		{"partial line on timeout", []string{"busy"}, []string{"busy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &fakePort{}
			for _, c := range tt.chunks {
				port.chunks = append(port.chunks, []byte(c))
			}
			l := New(port, 50*time.Millisecond)

			for _, want := range tt.want {
				got, err := l.ReadLine()
				if err != nil {
					t.Fatalf("ReadLine: %v", err)
				}
				if got != want {
					t.Errorf("ReadLine() = %q, want %q", got, want)
				}
			}
		})
	}
}

func TestLink_ReadLineError(t *testing.T) {
	boom := errors.New("device unplugged")
	l := New(&fakePort{readErr: boom}, time.Second)

	if _, err := l.ReadLine(); !errors.Is(err, boom) {
		t.Errorf("ReadLine error = %v, want %v", err, boom)
	}
}

func TestLink_ReadTimeoutBounded(t *testing.T) {
	port := &fakePort{}
	l := New(port, 200*time.Millisecond)
	l.ReadLine()

	if len(port.timeouts) == 0 {
		t.Fatal("SetReadTimeout was not called")
	}
	for _, to := range port.timeouts {
		if to <= 0 || to > 200*time.Millisecond {
			t.Errorf("read timeout %v outside (0, 200ms]", to)
		}
	}
}

func TestPortInfo_Label(t *testing.T) {
	tests := []struct {
		info PortInfo
		want string
	}{
		{PortInfo{Name: "/dev/ttyS0"}, "/dev/ttyS0"},
		{PortInfo{Name: "/dev/ttyUSB0", IsUSB: true, VID: "1a86", PID: "7523"}, "/dev/ttyUSB0 (USB 1a86:7523)"},
		{PortInfo{Name: "COM9", IsUSB: true, VID: "2341", PID: "0043", Product: "Arduino Uno"}, "COM9 (USB 2341:0043 Arduino Uno)"},
		{PortInfo{Name: "/dev/ttyUSB1", IsUSB: true, VID: "1a86", PID: "7523", Serial: "A10K3"}, "/dev/ttyUSB1 (USB 1a86:7523 SN A10K3)"},
	}

	for _, tt := range tests {
		if got := tt.info.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
