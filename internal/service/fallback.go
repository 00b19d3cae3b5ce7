package service

import "strings"

const ospfTemplate = `OSPF（开放式最短路径优先）协议是一种内部网关协议，用于在单一自治系统内确定路由。配置OSPF的基本步骤：

1. 启用OSPF进程：
` + "```" + `
Router(config)# router ospf <process-id>
` + "```" + `

2. 设定路由器ID：
` + "```" + `
Router(config-router)# router-id <ip-address>
` + "```" + `

3. 定义要通告的网络：
` + "```" + `
Router(config-router)# network <ip-address> <wildcard-mask> area <area-id>
` + "```" + `

4. 配置OSPF区域：
` + "```" + `
Router(config-router)# area <area-id> <type>
` + "```" + `

5. 验证配置：
` + "```" + `
Router# show ip ospf
Router# show ip ospf neighbor
Router# show ip route ospf
` + "```" + `

要注意的关键点：
- 使用单一区域可简化配置
- 合理设计区域边界以减少LSA通告
- 考虑使用认证增强安全性
- 适当调整Hello间隔和Dead时间`

const bgpTemplate = `BGP路由通告失败的常见原因：

1. **BGP对等体会话未建立**：
   - 检查TCP连接是否成功（端口179）
   - 确认AS号码配置正确
   - 检查neighbor语句中的IP地址是否正确

2. **路由策略或过滤问题**：
   - 检查route-map、prefix-list或as-path access-list是否过滤了路由
   - 查看distribute-list或filter-list配置

3. **Next-hop可达性问题**：
   - 确保next-hop地址可通过IGP到达
   - 检查next-hop-self配置是否正确

4. **网络声明问题**：
   - 确认network语句与实际路由表匹配
   - 检查network语句中的掩码设置

5. **Route Reflection问题**：
   - 在大型网络中检查Route Reflector配置
   - 确认cluster-id设置正确

6. **聚合问题**：
   - 检查aggregate-address命令是否正确
   - 确认suppress-map是否错误阻止了特定路由

7. **iBGP全网状连接缺失**：
   - 确保所有iBGP对等体之间有直接或通过Route Reflector的连接

常用诊断命令：
` + "```" + `
show ip bgp summary
show ip bgp neighbors
show ip bgp
debug ip bgp updates
` + "```"

const genericTemplate = `关于"%s"的回答：

这是一个关于网络协议的重要问题。在网络工程中，正确理解和配置各种协议对确保网络稳定运行至关重要。

解决这类问题时，我建议：

1. 首先确认网络拓扑和需求
2. 查阅相关设备的官方文档
3. 遵循最佳实践进行配置
4. 实施变更前进行充分测试
5. 保持配置的一致性和可维护性

对于更具体的解答，您可以提供更多关于具体网络环境和设备型号的细节，我可以给出更有针对性的建议。`

// 停顿标记，前端据此控制逐字输出的节奏。
const (
	PauseLong   = "<pause-long>"
	PauseMedium = "<pause-medium>"
	PauseShort  = "<pause-short>"
)

// pacingRules 的替换顺序不可调整：先处理空行，再处理冒号换行，最后是句末标点。
var pacingRules = [][2]string{
	{"\n\n", "\n" + PauseLong + "\n"},
	{"：\n", "：" + PauseMedium + "\n"},
	{"。", "。" + PauseShort},
	{"！", "！" + PauseShort},
	{"？", "？" + PauseShort},
}

// selectTemplate 按关键词选择兜底模板，OSPF 优先于 BGP。
func selectTemplate(question string) string {
	upper := strings.ToUpper(question)
	switch {
	case strings.Contains(upper, "OSPF"):
		return ospfTemplate
	case strings.Contains(upper, "BGP"):
		return bgpTemplate
	default:
		return strings.Replace(genericTemplate, "%s", question, 1)
	}
}

// Pace 在文本中插入停顿标记。只应对原始模板调用一次。
func Pace(text string) string {
	for _, rule := range pacingRules {
		text = strings.ReplaceAll(text, rule[0], rule[1])
	}
	return text
}

// FallbackAnswer 返回确定性的兜底回答（已插入停顿标记）。
func FallbackAnswer(question string) string {
	return Pace(selectTemplate(question))
}
