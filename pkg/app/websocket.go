package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fitkeys/workout-sync-service/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	WebSocketServerPingInterval = 25
	WebSocketServerPingWait     = 40
)

// WebSocketMessage wire frame: "<type>|<json payload>"
// WebSocketMessage 线上帧格式："<type>|<json payload>"
type WebSocketMessage struct {
	Type string `json:"type"` // 操作类型，例如 "Subscribe", "Unsubscribe"
	Data []byte `json:"data"` // JSON 负载
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
}

// WebsocketClient 存储每个 WebSocket 连接及其订阅状态
type WebsocketClient struct {
	conn *gws.Conn
	done chan struct{}
	Ctx  *gin.Context
	SF   *singleflight.Group

	logger *zap.Logger

	mu            sync.Mutex
	subscriptions map[string]struct{} // 已订阅的集合名
}

// Subscribe marks collections as wanted by this client.
// Subscribe 标记该客户端关注的集合
func (c *WebsocketClient) Subscribe(collections ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range collections {
		c.subscriptions[name] = struct{}{}
	}
}

// Unsubscribe 取消订阅
func (c *WebsocketClient) Unsubscribe(collections ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range collections {
		delete(c.subscriptions, name)
	}
}

// IsSubscribed 是否订阅了指定集合
func (c *WebsocketClient) IsSubscribed(collection string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.subscriptions[collection]
	return ok
}

// BindAndValid websocket 版本的参数绑定和验证
func (c *WebsocketClient) BindAndValid(data []byte, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	if err := sonic.Unmarshal(data, obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: "Invalid message format",
		})
		return false, errs
	}

	trans, _ := c.Ctx.Value("trans").(ut.Translator)
	return ValidateStruct(trans, obj)
}

// 定期发送 Ping 消息
func (c *WebsocketClient) PingLoop(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			c.logger.Info("WebsocketServer Client Close Ping")
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				c.logger.Error("WebsocketServer Client Ping err", zap.Error(err))
				return
			}
		}
	}
}

// ToResponse 将结果转换为 JSON 格式并发送给客户端
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action ...string) {
	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	c.send(actionType, content)
}

func (c *WebsocketClient) send(actionType string, content any) {
	responseBytes, _ := sonic.Marshal(content)
	if actionType != "" {
		responseBytes = []byte(fmt.Sprintf(`%s|%s`, actionType, string(responseBytes)))
	}
	c.conn.WriteMessage(gws.OpcodeText, responseBytes)
}

// ------------------------------------> WebsocketServer

type ConnStorage = map[*gws.Conn]*WebsocketClient

// WebsocketServer snapshot stream server built on gws
// WebsocketServer 基于 gws 的快照推送服务
type WebsocketServer struct {
	handlers map[string]func(*WebsocketClient, *WebSocketMessage)
	clients  ConnStorage
	mu       sync.Mutex
	up       *gws.Upgrader
	config   *WebsocketServerConfig
	logger   *zap.Logger
}

func NewWebsocketServer(c WebsocketServerConfig, logger *zap.Logger) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	wss := WebsocketServer{
		handlers: make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:  make(ConnStorage),
		config:   &c,
		logger:   logger,
	}
	return &wss
}

func (w *WebsocketServer) Upgrade() {
	w.up = gws.NewUpgrader(w, &w.config.GWSOption)
}

func (w *WebsocketServer) Run() gin.HandlerFunc {

	return func(c *gin.Context) {

		w.Upgrade()
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			w.logger.Error("WebsocketServer Start err", zap.Error(err))
			return
		}
		client := &WebsocketClient{
			conn:          socket,
			done:          make(chan struct{}),
			Ctx:           c,
			SF:            new(singleflight.Group),
			logger:        w.logger,
			subscriptions: make(map[string]struct{}),
		}
		w.AddClient(client)
		w.logger.Info("WebsocketServer Start", zap.String("type", "ReadLoop"))
		go socket.ReadLoop()
		go client.PingLoop(w.config.PingInterval)
	}
}

// Use 注册消息处理器
func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// BroadcastSnapshot pushes a collection snapshot to every client subscribed
// to that collection. Payload is already JSON.
// BroadcastSnapshot 向所有订阅了该集合的客户端推送快照，payload 已经是 JSON
func (w *WebsocketServer) BroadcastSnapshot(collection string, payload []byte) {
	frame := []byte(fmt.Sprintf(`Snapshot|%s`, string(payload)))
	b := gws.NewBroadcaster(gws.OpcodeText, frame)
	defer b.Close()

	w.mu.Lock()
	targets := make([]*WebsocketClient, 0, len(w.clients))
	for _, c := range w.clients {
		targets = append(targets, c)
	}
	w.mu.Unlock()

	for _, c := range targets {
		if c.conn == nil || !c.IsSubscribed(collection) {
			continue
		}
		_ = b.Broadcast(c.conn)
	}
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
}

func (w *WebsocketServer) ClientCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	w.logger.Info("WebsocketServer Client Connect", zap.Int("Count", w.ClientCount()))
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {
	c := w.GetClient(conn)
	w.RemoveClient(conn)

	if c != nil {
		close(c.done)
	}

	w.logger.Info("WebsocketServer Client Leave", zap.Int("Count", w.ClientCount()))
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	messageStr := message.Data.String()
	index := strings.Index(messageStr, "|")

	var msg WebSocketMessage
	if index != -1 {
		msg.Type = messageStr[:index]
		msg.Data = []byte(messageStr[index+1:])
	} else {
		w.logger.Error("WebsocketServer OnMessage", zap.String("type", "Illegal message type"))
		return
	}

	handler, exists := w.handlers[msg.Type]
	if exists {
		w.logger.Info("WebsocketServer OnMessage", zap.String("Type", msg.Type))
		handler(c, &msg)
	} else {
		w.logger.Error("WebsocketServer OnMessage", zap.String("msg", "Unknown message type"))
	}
}
