package tools

// PanicOnErr 只在启动阶段使用，初始化失败直接退出
func PanicOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
