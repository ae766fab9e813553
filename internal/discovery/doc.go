// Package discovery advertises and finds zeroapi terminal servers on the
// local network with multicast DNS.
//
// `zeroapi serve --mdns` registers an "_http._tcp" service whose TXT
// records carry "app=zeroapi", the version and the login path. `zeroapi
// scan` browses the same service type and keeps only entries with that
// marker, so ordinary web servers on the network are ignored.
//
// # Usage Example
//
//	ad, err := discovery.Advertise("zeroapi-dev", 8080, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer ad.Shutdown()
//
//	instances, err := discovery.NewScanner().Scan(ctx)
//	for _, inst := range instances {
//	    fmt.Println(inst.LoginURL())
//	}
//
// # Network Requirements
//
// mDNS uses UDP port 5353 on the multicast group 224.0.0.251. Both ends
// must share a network segment and firewalls must allow that traffic.
package discovery
