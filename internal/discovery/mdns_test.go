package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name: "bridge with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "fanctl-bridge-livingroom"},
				HostName:      "rfbridge.local.",
				Port:          7700,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
				Text:          []string{"version=1"},
			},
			wantIP:   "192.168.1.50",
			wantPort: 7700,
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "fanctl-bridge"},
				HostName:      "rfbridge.local.",
				Port:          7700,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "fe80::1",
			wantPort: 7700,
		},
		{
			name: "IPv4 preferred over IPv6",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "fanctl-bridge"},
				HostName:      "rfbridge.local.",
				Port:          7700,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::2")},
			},
			wantIP:   "10.0.0.5",
			wantPort: 7700,
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "fanctl-bridge"},
				HostName:      "rfbridge.local.",
				Port:          7700,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if bridge != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", bridge)
				}
				return
			}
			if bridge == nil {
				t.Fatal("parseServiceEntry() = nil, want bridge")
			}
			if bridge.Name != tt.entry.Instance {
				t.Errorf("Name = %v, want %v", bridge.Name, tt.entry.Instance)
			}
			if bridge.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", bridge.IP, tt.wantIP)
			}
			if bridge.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", bridge.Port, tt.wantPort)
			}
			if time.Since(bridge.DiscoveredAt) > time.Second {
				t.Errorf("DiscoveredAt is not recent: %v", bridge.DiscoveredAt)
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "fanctl-bridge"},
		HostName:      "rfbridge.local.",
		Port:          7700,
		AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
		Text:          []string{"version=1", "auth=basic", "flag"},
	}

	bridge := parseServiceEntry(entry)
	if bridge == nil {
		t.Fatal("parseServiceEntry() = nil, want bridge")
	}

	want := map[string]string{"version": "1", "auth": "basic", "flag": ""}
	for key, wantValue := range want {
		if got := bridge.GetMetadata(key); got != wantValue {
			t.Errorf("GetMetadata(%q) = %q, want %q", key, got, wantValue)
		}
	}
}

func TestBridgeURL(t *testing.T) {
	bridge := &Bridge{Name: "fanctl-bridge", IP: "192.168.1.50", Port: 7700}
	if got, want := bridge.URL(), "ws://192.168.1.50:7700/transmit"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
