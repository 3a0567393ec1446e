package testutil

// Nostr key pair used across tests.
const (
	TestSK    = "nsec19nzdqz0awf73vmhtptexj32fyjjufrt62whzfa9mfakcaml5vckqukyjyp"
	TestPK    = "npub1u4kr6t7cuqcfye89tqcf4ej7xyeglc9zu8lzdn6qwj5078053lpq2qwka7"
	TestSKHex = "2cc4d009fd727d166eeb0af269454924a5c48d7a53ae24f4bb4f6d8eeff4662c"
	TestPKHex = "e56c3d2fd8e0309264e558309ae65e31328fe0a2e1fe26cf4074a8ff1df48fc2"
)
