//go:build tinygo

// Package wifi joins the configured access point using whichever network
// device the board has.
package wifi

import (
	"time"

	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/netlink/probe"
)

// Connect joins the given Wi-Fi network and waits for an address. Progress is
// printed to buf. The link is left up for the periodic NTP resync.
//
// based on https://github.com/tinygo-org/drivers/blob/release/examples/net/ntpclient/main.go
func Connect(ssid, password string, buf *textbuf.Buffer) (netlink.Netlinker, error) {
	_ = buf.Print("Wifi: init")
	linker, dever := probe.Probe()
	time.Sleep(1 * time.Second)

	_ = buf.Println(".\nConnect: " + ssid)
	err := linker.NetConnect(&netlink.ConnectParams{
		Ssid:           ssid,
		Passphrase:     password,
		AuthType:       netlink.AuthTypeWPA2,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	_ = buf.Print("DHCP: ")
	time.Sleep(time.Second)
	myIP, err := dever.Addr()
	if err != nil {
		return nil, err
	}
	_ = buf.Println(myIP.String())
	return linker, nil
}
