package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"skillpass/internal/config"
	"skillpass/internal/errs"
	"skillpass/internal/handler"
	"skillpass/internal/svc"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

var configFile = flag.String("f", "etc/skillpass.yaml", "the config file")

func main() {
	flag.Parse()

	// .env 覆盖项在配置加载前生效
	_ = godotenv.Load()

	var c config.Config
	conf.MustLoad(*configFile, &c, conf.UseEnv())

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	httpx.SetErrorHandlerCtx(errs.HTTPHandler)

	ctx := svc.NewServiceContext(c)
	handler.RegisterHandlers(server, ctx)

	// 设置优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	fmt.Println("🔗 链上余额监控已集成启动")

	// 在独立的goroutine中启动服务器
	go func() {
		server.Start()
	}()

	// 等待退出信号
	<-quit
	fmt.Println("\n🛑 收到退出信号，正在优雅关闭服务...")

	// 停止监控与事件连接
	ctx.StopMonitor()

	fmt.Println("✅ 服务已安全退出")
}
