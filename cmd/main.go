package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "notekeeper/api/v1"
	"notekeeper/config"
	"notekeeper/dao"
	"notekeeper/internal/picture"
	myvalidator "notekeeper/internal/validator"
	"notekeeper/middleware"
	"notekeeper/model"
	"notekeeper/service"
)

func main() {
	// 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	config.InitConfig(configPath)
	config.InitRedis()

	// 初始化数据库
	db, err := gorm.Open(mysql.Open(config.GlobalConfig.MySQL.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Note{}); err != nil {
		panic(err)
	}

	// 图片存储目录
	pictures, err := picture.NewStore(
		config.GlobalConfig.Uploads.Dir,
		config.GlobalConfig.Uploads.ThumbnailPx,
		config.GlobalConfig.Uploads.Placeholder,
	)
	if err != nil {
		panic(err)
	}

	// 初始化 DAO 和 Service
	userDAO := dao.NewUserDAO(db)
	categoryDAO := dao.NewCategoryDAO(db)
	noteDAO := dao.NewNoteDAO(db)

	userService := service.NewUserService(userDAO, config.RedisClient)
	categoryService := service.NewCategoryService(categoryDAO)
	noteService := service.NewNoteService(noteDAO, categoryDAO, pictures)

	userAPI := v1.NewUserAPI(userService)
	pageAPI := v1.NewPageAPI(userService, categoryService)
	categoryAPI := v1.NewCategoryAPI(categoryService)
	noteAPI := v1.NewNoteAPI(noteService, categoryService)

	// 初始化路由
	r := gin.Default()
	r.MaxMultipartMemory = config.GlobalConfig.Uploads.MaxBytes
	r.LoadHTMLGlob(configPath + "/templates/*.html")
	r.Static("/static/images", config.GlobalConfig.Uploads.Dir)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("notblank", myvalidator.NotBlank); err != nil {
			panic(err)
		}
	}

	// 公共路由
	r.GET("/", pageAPI.Index)
	r.GET("/register", userAPI.ShowRegister)
	r.POST("/register", userAPI.Register)
	r.GET("/login", userAPI.ShowLogin)
	loginLimiter := middleware.LoginRateLimiter(config.RedisClient, 5, time.Minute)
	r.POST("/login", loginLimiter, userAPI.Login)
	r.GET("/logout", userAPI.Logout)

	// 私有路由
	private := r.Group("/")
	private.Use(middleware.SessionAuth(userService.Session))
	{
		private.GET("/categories", categoryAPI.List)
		private.GET("/add_category", categoryAPI.ShowAdd)
		private.POST("/add_category", categoryAPI.Add)
		private.GET("/edit_category/:id", categoryAPI.ShowEdit)
		private.POST("/edit_category/:id", categoryAPI.Edit)
		private.GET("/delete_category/:id", categoryAPI.Delete)

		private.GET("/notes", noteAPI.List)
		private.POST("/notes", noteAPI.List)
		private.GET("/add_notes", noteAPI.ShowAdd)
		private.POST("/add_notes", noteAPI.Add)
		private.GET("/edit_note/:id", noteAPI.ShowEdit)
		private.POST("/edit_note/:id", noteAPI.Edit)
		private.GET("/delete_note/:id", noteAPI.Delete)
	}

	// 启动服务
	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
