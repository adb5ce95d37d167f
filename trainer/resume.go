package trainer

import "github.com/selfexplain/classifier/net/encoder"

// Resume loads previously checkpointed weights into the network when
// the resume flag is set and a checkpoint path is configured.
func Resume(net *encoder.Network, resume bool, dstmodel string) {
	if resume && dstmodel != "" {
		if err := net.ReadWeightsFromFile(dstmodel); err != nil {
			println(err.Error())
		}
	}
}
