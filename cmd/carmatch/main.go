// Command carmatch 是推荐引擎的命令行入口：按偏好推荐车辆，或校验 Pipeline 配置。
package main

import (
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
