package announce

import (
	"testing"
	"time"
)

func TestTXTRoundTrip(t *testing.T) {
	info := Info{
		AgentID: "4fa1c7e2-0000-1111-2222-333344445555",
		Version: "1.0",
		Adapter: "sim",
	}

	records := EncodeTXT(info)
	if len(records) != 3 {
		t.Fatalf("record count = %d", len(records))
	}
	if records[0] != "id="+info.AgentID {
		t.Errorf("id record = %q", records[0])
	}

	parsed, err := ParseTXT(records)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != info {
		t.Errorf("parsed = %+v, want %+v", parsed, info)
	}
}

func TestParseTXTUnknownKeysIgnored(t *testing.T) {
	parsed, err := ParseTXT([]string{"id=a", "future=thing", "adapter=sim"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.AgentID != "a" || parsed.Adapter != "sim" {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestParseTXTMalformed(t *testing.T) {
	if _, err := ParseTXT([]string{"no-equals-sign"}); err == nil {
		t.Error("malformed record must error")
	}
}

func TestNewAppliesDefaultTTL(t *testing.T) {
	a := New(Config{Instance: "sw1", Port: 9339})
	if a.config.TTL != DefaultTTL {
		t.Errorf("ttl = %v, want %v", a.config.TTL, DefaultTTL)
	}

	a = New(Config{Instance: "sw1", Port: 9339, TTL: 30 * time.Second})
	if a.config.TTL != 30*time.Second {
		t.Errorf("ttl = %v", a.config.TTL)
	}
}

func TestStopWithoutStart(t *testing.T) {
	New(Config{Instance: "sw1", Port: 9339}).Stop()
}
