package language

// ZhCN, ZhHK and ZhTW are the bundled Chinese variant descriptors. Each
// loads a script-level dictionary first (hans/hant), then a regional
// wording override that takes priority on key collisions.
var (
	ZhCN *Language
	ZhHK *Language
	ZhTW *Language
)

func init() {
	var err error
	ZhCN, err = FromEmbedded("zh-cn", bundled, []string{
		"data/zh/hans.json", "data/zh/CN.json",
	}, []string{"zh-hans"})
	if err != nil {
		panic(err)
	}

	ZhHK, err = FromEmbedded("zh-hk", bundled, []string{
		"data/zh/hant.json", "data/zh/HK.json",
	}, []string{"zh-hant", "zh-TW"})
	if err != nil {
		panic(err)
	}

	ZhTW, err = FromEmbedded("zh-tw", bundled, []string{
		"data/zh/hant.json", "data/zh/TW.json",
	}, []string{"zh-hant", "zh-HK"})
	if err != nil {
		panic(err)
	}
}
