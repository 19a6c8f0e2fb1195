/*
Package q3 implements the client side of the ioquake3 out-of-band UDP protocol.

It encodes getstatus and rcon requests, decodes statusResponse packets into server variables and a
player roster, and ships a small UDP transport plus a [Client] that ties them together.

	c := q3.NewClient("203.0.113.7:27960", q3.ClientConfig{})
	info, err := c.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Println(info.Vars["sv_hostname"], len(info.Players))

Player names are returned exactly as the server sent them, color escapes and surrounding quotes
included.
*/
package q3
