//go:generate mockgen -destination=transport_mock_test.go -package=q3_test github.com/haveachin/q3tool/pkg/q3 Transport
package q3_test

const (
	playerSection = "11 194 \"dogue\"\n11 194 \"dogue\"\n11 194 \"dogue\"\n\x00"
	varSection    = `\players_blue\1 2 4 \players_red\3 5 6 \score_blue\1\score_red\0\sv_maxclients\22` +
		`\capturelimit\10\fraglimit\10\mapname\pro-q3dm13\sv_hostname\` + "\x07" + `  ^^--UnFreeZe^/.^-fpsclasico` +
		`\g_needpass\0\g_unlaggedVersion\2.0`
	statusPacket = "\xFF\xFF\xFF\xFFstatusResponse\n" + varSection + "\n" + playerSection
)
