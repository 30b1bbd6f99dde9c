package catalog

import "github.com/icsuite/wireplan/internal/types"

// registerDefaults installs the built-in Yokogawa catalog so allocation
// works without any catalog files on disk.
func (c *Catalog) registerDefaults() {
	yokogawa := &vendorSpec{
		vendor: "Yokogawa",
		systems: map[types.ControlSystem]systemSpec{
			types.SystemDCS: {
				Modules: []types.IOModule{
					{Model: "AAI143-H00", IOType: types.IOTypeAI, Channels: 8, SignalClass: "4-20mA", Features: []string{"HART"}, ControlSystem: types.SystemDCS, Vendor: "Yokogawa"},
					{Model: "AAO143-H00", IOType: types.IOTypeAO, Channels: 8, SignalClass: "4-20mA", Features: []string{"HART"}, ControlSystem: types.SystemDCS, Vendor: "Yokogawa"},
					{Model: "ADV151-P00", IOType: types.IOTypeDI, Channels: 32, SignalClass: "24VDC", ControlSystem: types.SystemDCS, Vendor: "Yokogawa"},
					{Model: "ADV159-P00", IOType: types.IOTypeDO, Channels: 32, SignalClass: "24VDC", ControlSystem: types.SystemDCS, Vendor: "Yokogawa"},
				},
				ChannelDensity: map[types.IOType]int{
					types.IOTypeAI: 8, types.IOTypeAO: 8, types.IOTypeDI: 32, types.IOTypeDO: 32,
				},
			},
			types.SystemSIS: {
				Modules: []types.IOModule{
					{Model: "ATI4D-00", IOType: types.IOTypeAI, Channels: 8, SignalClass: "4-20mA", Features: []string{"SIL3"}, SILRating: types.SIL3, ControlSystem: types.SystemSIS, Vendor: "Yokogawa"},
					{Model: "ATO4D-00", IOType: types.IOTypeAO, Channels: 4, SignalClass: "4-20mA", Features: []string{"SIL3"}, SILRating: types.SIL3, ControlSystem: types.SystemSIS, Vendor: "Yokogawa"},
					{Model: "ADI4D-00", IOType: types.IOTypeDI, Channels: 16, SignalClass: "24VDC", Features: []string{"SIL3"}, SILRating: types.SIL3, ControlSystem: types.SystemSIS, Vendor: "Yokogawa"},
					{Model: "ADO4D-00", IOType: types.IOTypeDO, Channels: 8, SignalClass: "24VDC", Features: []string{"SIL3"}, SILRating: types.SIL3, ControlSystem: types.SystemSIS, Vendor: "Yokogawa"},
				},
				ChannelDensity: map[types.IOType]int{
					types.IOTypeAI: 8, types.IOTypeAO: 4, types.IOTypeDI: 16, types.IOTypeDO: 8,
				},
			},
			types.SystemRTU: {
				Modules: []types.IOModule{
					{Model: "F3AD04-5N", IOType: types.IOTypeAI, Channels: 4, SignalClass: "4-20mA", ControlSystem: types.SystemRTU, Vendor: "Yokogawa"},
					{Model: "F3DA04-6N", IOType: types.IOTypeAO, Channels: 4, SignalClass: "4-20mA", ControlSystem: types.SystemRTU, Vendor: "Yokogawa"},
					{Model: "F3XD32-3N", IOType: types.IOTypeDI, Channels: 32, SignalClass: "24VDC", ControlSystem: types.SystemRTU, Vendor: "Yokogawa"},
					{Model: "F3YD32-1N", IOType: types.IOTypeDO, Channels: 32, SignalClass: "24VDC", ControlSystem: types.SystemRTU, Vendor: "Yokogawa"},
				},
				ChannelDensity: map[types.IOType]int{
					types.IOTypeAI: 4, types.IOTypeAO: 4, types.IOTypeDI: 32, types.IOTypeDO: 32,
				},
			},
		},
	}

	c.vendors[yokogawa.vendor] = yokogawa
}
